package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

type captureProcessor struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (p *captureProcessor) Process(_ context.Context, entry domain.AuditEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry)
	return nil
}

func (p *captureProcessor) snapshot() []domain.AuditEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.AuditEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

func TestDispatcher_DeliversAndStamps(t *testing.T) {
	proc := &captureProcessor{}
	d := NewDispatcher(2, proc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuditEntry{Actor: "dr@clinic.test", Action: domain.AuditLogin, Success: true})

	deadline := time.Now().Add(2 * time.Second)
	for {
		if entries := proc.snapshot(); len(entries) == 1 {
			if entries[0].Timestamp.IsZero() {
				t.Fatalf("dispatcher must stamp entries")
			}
			if entries[0].Action != domain.AuditLogin {
				t.Fatalf("unexpected action %q", entries[0].Action)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("entry never processed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDispatcher_SameActorSameWorker(t *testing.T) {
	d := NewDispatcher(4, &captureProcessor{}, zerolog.Nop())
	first := d.shardIndex("dr@clinic.test")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("dr@clinic.test"); got != first {
			t.Fatalf("shard index not deterministic: %d vs %d", got, first)
		}
	}
}
