package models

// User is an operator account for the admin panel.
type User struct {
	ID       string `json:"id" db:"id" gorm:"column:id;type:varchar;primaryKey;not null"`
	Username string `json:"username" db:"username" gorm:"column:username;type:text;not null;uniqueIndex"`
	Password string `json:"-" db:"password" gorm:"column:password;type:text;not null"`
}

func (User) TableName() string {
	return "users"
}

// UserInput registers a user. Password is stored as given, callers hash it.
type UserInput struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

func (in UserInput) NewUser(id string) User {
	return User{ID: id, Username: in.Username, Password: in.Password}
}
