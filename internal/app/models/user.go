package models

type User struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Name      string `json:"name" bson:"name"`
	Email     string `json:"email" bson:"email"`
	Password  string `json:"-" bson:"password"`
	Role      string `json:"role" bson:"role"`
	IsActive  bool   `json:"isActive" bson:"isActive"`
	TimeModel `bson:",inline"`
}
