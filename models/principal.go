package models

const (
	RoleMahasiswa = "mahasiswa"
	RoleKantin    = "kantin"
)

// Principal is the resolved identity behind a request token: exactly one of
// Mahasiswa or Kantin is set, and Role carries the tag. Consumers switch on
// Role rather than sniffing which pointer is non-nil.
type Principal struct {
	Role      string
	Mahasiswa *Mahasiswa
	Kantin    *Kantin
}

func (p Principal) ID() uint {
	switch p.Role {
	case RoleMahasiswa:
		return p.Mahasiswa.ID
	case RoleKantin:
		return p.Kantin.ID
	}
	return 0
}

func (p Principal) ProfileComplete() bool {
	switch p.Role {
	case RoleMahasiswa:
		return p.Mahasiswa.ProfileComplete()
	case RoleKantin:
		return p.Kantin.ProfileComplete()
	}
	return false
}

// ProfileRequirement names the fields the principal still has to fill in,
// for the profile-incomplete error message.
func (p Principal) ProfileRequirement() string {
	if p.Role == RoleKantin {
		return "tenant name, owner details, and operational hours"
	}
	return "delivery address and phone number"
}
