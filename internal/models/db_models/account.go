package db_models

type Account struct {
	BaseModel
	Username     string `gorm:"unique"`
	PasswordHash string
	Email        string
	Role         string
	Phone        string
	Address      string
	// Photo holds the stored avatar filename; nil until the first upload.
	Photo *string
}
