package domain

// Dashboard route identifiers resolved by the access policy. "denied" is a
// terminal view: an authenticated profile with an unrecognized role must
// land there, never on a dashboard.
const (
	RouteAdmin  = "admin"
	RouteDoctor = "doctor"
	RouteLogin  = "login"
	RouteDenied = "denied"
)

// Actions checked through CanPerformAction.
const (
	ActionCreateDoctor      = "create_doctor"
	ActionDeleteDoctor      = "delete_doctor"
	ActionViewDoctors       = "view_doctors"
	ActionManageUsers       = "manage_users"
	ActionCreatePatient     = "create_patient"
	ActionDeletePatient     = "delete_patient"
	ActionViewPatients      = "view_patients"
	ActionScanMRI           = "scan_mri"
	ActionUploadMRI         = "upload_mri"
	ActionUploadEEG         = "upload_eeg"
	ActionViewPatientImages = "view_patient_images"
)

// permissions is the fixed permitted-action table per role. Absence of a
// role or an action denies by default.
var permissions = map[string]map[string]struct{}{
	RoleAdmin: actionSet(
		ActionCreateDoctor,
		ActionDeleteDoctor,
		ActionViewDoctors,
		ActionManageUsers,
	),
	RoleDoctor: actionSet(
		ActionCreatePatient,
		ActionDeletePatient,
		ActionViewPatients,
		ActionScanMRI,
		ActionUploadMRI,
		ActionUploadEEG,
		ActionViewPatientImages,
	),
}

func actionSet(actions ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

// HasAccess reports whether userRole satisfies requiredRole. Admin
// implicitly satisfies every requirement; unknown roles satisfy nothing.
func HasAccess(userRole, requiredRole string) bool {
	if userRole == "" || requiredRole == "" {
		return false
	}
	if userRole == RoleAdmin {
		return true
	}
	switch requiredRole {
	case RoleDoctor:
		return userRole == RoleDoctor
	default:
		return false
	}
}

// DashboardRoute maps a role to the dashboard it lands on after login.
// Anything unrecognized routes back to login.
func DashboardRoute(role string) string {
	switch role {
	case RoleAdmin:
		return RouteAdmin
	case RoleDoctor:
		return RouteDoctor
	default:
		return RouteLogin
	}
}

// RouteForProfile resolves where an already-authenticated profile belongs.
// Unlike DashboardRoute it distinguishes "no session" from "session with a
// role we do not recognize": the latter is an explicit denial, not a silent
// bounce to login.
func RouteForProfile(p *Profile) string {
	if p == nil {
		return RouteLogin
	}
	switch p.Role {
	case RoleAdmin:
		return RouteAdmin
	case RoleDoctor:
		return RouteDoctor
	default:
		return RouteDenied
	}
}

// CanPerformAction reports whether role may perform action per the fixed
// permission table.
func CanPerformAction(role, action string) bool {
	actions, ok := permissions[role]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}
