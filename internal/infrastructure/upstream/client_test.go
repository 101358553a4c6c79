package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zerolog.Nop()), srv
}

func asGatewayError(t *testing.T, err error) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error")
	}
	var ge *Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *upstream.Error, got %T: %v", err, err)
	}
	return ge
}

func TestErrorBody_DetailHasPriority(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"Invalid credentials","message":"other","error":"another"}`)
	})

	_, err := c.Login(context.Background(), "a@b.test", "wrong")
	ge := asGatewayError(t, err)
	if ge.Message != "Invalid credentials" {
		t.Fatalf("expected detail to win, got %q", ge.Message)
	}
	if ge.Status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", ge.Status)
	}
}

func TestErrorBody_FallbackOrder(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"message":"try message"}`, "try message"},
		{`{"error":"try error"}`, "try error"},
		{`{"unrelated":"x"}`, msgGenericError},
		{`{"detail":null,"message":"second"}`, "second"},
	}
	for _, tc := range cases {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, tc.body)
		})
		_, err := c.ListDoctors(context.Background(), "tok")
		if ge := asGatewayError(t, err); ge.Message != tc.want {
			t.Errorf("body %s: got %q, want %q", tc.body, ge.Message, tc.want)
		}
	}
}

func TestErrorBody_NonObjectJSONFallsBackToGeneric(t *testing.T) {
	cases := []struct {
		status int
		body   string
	}{
		{http.StatusBadRequest, `["field a is invalid"]`},
		{http.StatusNotFound, `["nope"]`},
		{http.StatusUnprocessableEntity, `"just a string"`},
		{http.StatusBadRequest, `42`},
	}
	for _, tc := range cases {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			io.WriteString(w, tc.body)
		})
		_, err := c.ListDoctors(context.Background(), "tok")
		ge := asGatewayError(t, err)
		if ge.Message != msgGenericError {
			t.Errorf("%d %s: got %q, want %q", tc.status, tc.body, ge.Message, msgGenericError)
		}
		if ge.Status != tc.status {
			t.Errorf("%d %s: status = %d", tc.status, tc.body, ge.Status)
		}
	}
}

func TestNotFoundWithoutJSONBody_MapsToServiceUnavailable(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	_, err := c.Profile(context.Background(), "tok")
	if ge := asGatewayError(t, err); ge.Message != msgServiceUnavailable {
		t.Fatalf("got %q, want %q", ge.Message, msgServiceUnavailable)
	}
}

func TestServerErrorWithoutJSONBody_MapsToNetworkError(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>oops</html>")
	})
	_, err := c.Profile(context.Background(), "tok")
	if ge := asGatewayError(t, err); ge.Message != msgNetworkError {
		t.Fatalf("got %q, want %q", ge.Message, msgNetworkError)
	}
}

func TestTransportFailure_NormalizedNeverPanics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	c := New(srv.URL, time.Second, zerolog.Nop())

	_, err := c.ListPatients(context.Background(), "tok")
	ge := asGatewayError(t, err)
	if ge.Message != msgNetworkError {
		t.Fatalf("got %q, want %q", ge.Message, msgNetworkError)
	}
	if ge.Status != 0 {
		t.Fatalf("transport failure must carry status 0, got %d", ge.Status)
	}
}

func TestSuccessBodyThatIsNotJSON_MapsToNetworkError(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "plain text, not json")
	})
	_, err := c.ListPatients(context.Background(), "tok")
	if ge := asGatewayError(t, err); ge.Message != msgNetworkError {
		t.Fatalf("got %q, want %q", ge.Message, msgNetworkError)
	}
}

func TestBearerHeaderAttachedAutomatically(t *testing.T) {
	var gotAuth string
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `[]`)
	})

	if _, err := c.ListDoctors(context.Background(), "tok-123"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestLogin_SendsJSONWithoutAuthHeader(t *testing.T) {
	var gotAuth, gotContentType, gotBody string
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		io.WriteString(w, `{"access_token":"tok","role":"doctor"}`)
	})

	result, err := c.Login(context.Background(), "dr@clinic.test", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("login must not carry an Authorization header, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q", gotContentType)
	}
	if !strings.Contains(gotBody, `"email":"dr@clinic.test"`) {
		t.Fatalf("body missing email: %s", gotBody)
	}
	if result.AccessToken != "tok" || result.Role != domain.RoleDoctor {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestScanMRI_MultipartFieldsAndFile(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary=") {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("patient_name"); got != "Jane Roe" {
			t.Errorf("patient_name = %q", got)
		}
		if got := r.FormValue("mobile_number"); got != "5551234" {
			t.Errorf("mobile_number = %q", got)
		}
		if got := r.FormValue("age"); got != "71" {
			t.Errorf("age = %q", got)
		}
		if _, ok := r.MultipartForm.Value["gender"]; ok {
			t.Errorf("empty gender must be omitted")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			defer file.Close()
			content, _ := io.ReadAll(file)
			if string(content) != "fake-mri-bytes" {
				t.Errorf("file content = %q", content)
			}
			if header.Filename != "scan.png" {
				t.Errorf("filename = %q", header.Filename)
			}
		}
		io.WriteString(w, `{"classification":"non_demented","confidence":0.93}`)
	})

	result, err := c.ScanMRI(context.Background(), "tok", domain.ScanSubmission{
		PatientName:  "Jane Roe",
		MobileNumber: "5551234",
		Age:          71,
		Filename:     "scan.png",
		File:         strings.NewReader("fake-mri-bytes"),
	})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !strings.Contains(string(result), "non_demented") {
		t.Fatalf("unexpected payload: %s", result)
	}
}

func TestUploadPatientImage_EEGEndpoint(t *testing.T) {
	var gotPath string
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, `{"id":"img-1"}`)
	})

	_, err := c.UploadPatientImage(context.Background(), "tok", "p-42", domain.ImageUpload{
		Kind:     domain.ImageEEG,
		Filename: "eeg.png",
		File:     strings.NewReader("eeg-bytes"),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if gotPath != "/doctor/patients/p-42/upload-eeg" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestEmptySuccessBody_YieldsEmptyObject(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	raw, err := c.DeletePatient(context.Background(), "tok", "p-1")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if string(raw) != `{}` {
		t.Fatalf("raw = %s", raw)
	}
}
