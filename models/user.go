package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the app-local profile of an account held by the identity provider.
type User struct {
	ID          string         `gorm:"primaryKey;type:varchar(128)" json:"id"`
	Email       string         `gorm:"index" json:"email"`
	DisplayName string         `json:"display_name"`
	Role        Role           `gorm:"type:varchar(20);default:'user'" json:"role"`
	Phone       string         `json:"phone,omitempty"`
	JoinedAt    time.Time      `json:"join_date"`
	Addresses   []SavedAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// Address is a shipping address as entered at checkout.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

func (a Address) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// SameLocation reports whether two addresses share street, city, state and zip.
// Name and phone are not part of the comparison.
func (a Address) SameLocation(b Address) bool {
	return a.Street == b.Street && a.City == b.City && a.State == b.State && a.Zip == b.Zip
}

func (a Address) String() string {
	return a.Street + ", " + a.City + ", " + a.State + " - " + a.Zip
}

// SavedAddress is an Address kept on a user's profile. A user never holds two
// rows with the same street, city, state and zip.
type SavedAddress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_saved_address_location,priority:1" json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Street    string    `gorm:"uniqueIndex:idx_saved_address_location,priority:2" json:"street"`
	City      string    `gorm:"uniqueIndex:idx_saved_address_location,priority:3" json:"city"`
	State     string    `gorm:"uniqueIndex:idx_saved_address_location,priority:4" json:"state"`
	Zip       string    `gorm:"uniqueIndex:idx_saved_address_location,priority:5" json:"zip"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSavedAddress(userID string, a Address) SavedAddress {
	return SavedAddress{
		UserID:    userID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		Zip:       a.Zip,
	}
}

func (s SavedAddress) Address() Address {
	return Address{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Phone:     s.Phone,
		Street:    s.Street,
		City:      s.City,
		State:     s.State,
		Zip:       s.Zip,
	}
}
