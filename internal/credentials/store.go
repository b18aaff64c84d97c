package credentials

// Credential is a username/password pair accepted by the login form.
type Credential struct {
	Username string
	Password string
}

// Store holds a fixed set of credentials.
type Store struct {
	accounts []Credential
}

// NewStore copies the given credentials into a store.
func NewStore(accounts []Credential) *Store {
	cp := make([]Credential, len(accounts))
	copy(cp, accounts)
	return &Store{accounts: cp}
}

// Default returns the hardcoded demo accounts.
func Default() *Store {
	return NewStore([]Credential{
		{Username: "admin", Password: "1234"},
		{Username: "student1", Password: "pass1"},
		{Username: "student2", Password: "pass2"},
		{Username: "student3", Password: "pass3"},
		{Username: "student4", Password: "pass4"},
	})
}

// IsValid reports whether some account matches both fields exactly.
func (s *Store) IsValid(username, password string) bool {
	if s == nil {
		return false
	}
	for _, acc := range s.accounts {
		if acc.Username == username && acc.Password == password {
			return true
		}
	}
	return false
}

// Len returns the number of accounts.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.accounts)
}
