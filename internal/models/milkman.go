package models

// Milkman represents a delivery person. MilkmanID is the generated 6-digit
// code customers use to link their account.
type Milkman struct {
	BaseModel
	Name         string `json:"name"`
	Phone        string `gorm:"uniqueIndex" json:"phone"`
	PasswordHash string `json:"-"`
	MilkmanID    string `gorm:"uniqueIndex" json:"milkman_id"`
	UPIQR        string `json:"upi_qr,omitempty"`
}
