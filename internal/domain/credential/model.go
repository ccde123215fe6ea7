package credential

import "time"

// Credential is a stored test-environment login, keyed by role and
// environment.
type Credential struct {
	SerialNo    int       `json:"serial_no"`
	User        string    `json:"user"`
	Environment string    `json:"environment"`
	Username    string    `json:"username"`
	Password    string    `json:"password"`
	CreatedAt   time.Time `json:"created_at"`
}

// Lookup is the body returned to scripts that fetch a login.
type Lookup struct {
	User        string `json:"user"`
	Environment string `json:"environment"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

func (c *Credential) Lookup() Lookup {
	return Lookup{
		User:        c.User,
		Environment: c.Environment,
		Username:    c.Username,
		Password:    c.Password,
	}
}

// Summary is the list view. Passwords are never listed.
type Summary struct {
	SerialNo    int    `json:"serial_no"`
	User        string `json:"user"`
	Environment string `json:"environment"`
	Username    string `json:"username"`
}

func (c *Credential) Summary() Summary {
	return Summary{
		SerialNo:    c.SerialNo,
		User:        c.User,
		Environment: c.Environment,
		Username:    c.Username,
	}
}
