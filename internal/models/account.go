package models

// Account represents a game account row in the login server's database.
// The login server compares the stored password verbatim, so it is kept
// exactly as the player entered it (legacy wire format, see the
// credentials package).
type Account struct {
	Username string `json:"username" gorm:"column:username;primaryKey;type:varchar(16)" validate:"required,min=3,max=16"`
	Password string `gorm:"column:password;type:varchar(32)" validate:"required"` // No json tag for security
	RealName string `json:"realname" gorm:"column:realname;type:varchar(32)"`
}

// TableName maps Account onto the login server's accounts table.
func (Account) TableName() string {
	return "accounts"
}
