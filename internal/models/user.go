package models

// Roles stored on User.Role.
const (
	RoleAdmin    = "admin"
	RoleMilkman  = "milkman"
	RoleCustomer = "customer"
)

// User represents a farm admin or a customer account. Admins register with
// an email only; customers also carry a phone, an address and a link to
// their milkman, so the unique identity columns are nullable.
type User struct {
	BaseModel
	Name         string  `json:"name"`
	Email        *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone        *string `gorm:"uniqueIndex" json:"phone,omitempty"`
	PasswordHash string  `json:"-"`
	Role         string  `gorm:"index" json:"role"`
	FarmName     string  `json:"farm_name,omitempty"`
	Address      string  `json:"address,omitempty"`
	MilkmanID    string  `gorm:"index" json:"milkman_id,omitempty"`
	PrefBrand    string  `json:"pref_brand,omitempty"`
	PrefQuantity float64 `json:"pref_quantity,omitempty"`
}
