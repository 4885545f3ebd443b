package models

// DefaultBonus is the starting bonus balance granted on registration.
const DefaultBonus = 99999

// GameUser represents a game account row in the map server's database.
// The map server reads the MD5 digest of the password from both legacy
// password columns, so writes must keep them identical.
type GameUser struct {
	AccountID string `json:"account_id" gorm:"column:mid;primaryKey;type:varchar(16)"`
	Password  string `gorm:"column:password;type:varchar(32)"`
	Pwd       string `gorm:"column:pwd;type:varchar(32)"`
	Bonus     int    `json:"bonus" gorm:"column:bonus"`
	OwnerID   string `json:"owner_id" gorm:"column:discord_user_id;type:varchar(64);index"`
}

// TableName maps GameUser onto the map server's tb_user table.
func (GameUser) TableName() string {
	return "tb_user"
}
