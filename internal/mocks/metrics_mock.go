package mocks

// MockMetrics is a mock implementation of the service metrics recorders for testing
type MockMetrics struct {
	LoginAttempts            map[string]int
	Registrations            map[string]int
	RoleProfilesCreated      map[string]int
	RoleProfilesDeleted      map[string]int
	AuthzDenials             map[string]int
	ProduitTransitions       map[string]int
	FournisseurVerifications map[string]int
}

// NewMockMetrics creates a new mock metrics recorder
func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		LoginAttempts:            make(map[string]int),
		Registrations:            make(map[string]int),
		RoleProfilesCreated:      make(map[string]int),
		RoleProfilesDeleted:      make(map[string]int),
		AuthzDenials:             make(map[string]int),
		ProduitTransitions:       make(map[string]int),
		FournisseurVerifications: make(map[string]int),
	}
}

func (m *MockMetrics) RecordLoginAttempt(status string) {
	m.LoginAttempts[status]++
}

func (m *MockMetrics) RecordRegistration(role string) {
	m.Registrations[role]++
}

func (m *MockMetrics) RecordRoleProfileCreated(role string) {
	m.RoleProfilesCreated[role]++
}

func (m *MockMetrics) RecordRoleProfileDeleted(role string) {
	m.RoleProfilesDeleted[role]++
}

func (m *MockMetrics) RecordAuthzDenial(resource, action string) {
	m.AuthzDenials[resource+"/"+action]++
}

func (m *MockMetrics) RecordProduitTransition(transition string) {
	m.ProduitTransitions[transition]++
}

func (m *MockMetrics) RecordFournisseurVerification(action string) {
	m.FournisseurVerifications[action]++
}
