package domain

import "time"

type Account struct {
	AccountID    string    `json:"id" dynamodbav:"account_id"`
	FirstName    string    `json:"first_name" dynamodbav:"first_name"`
	LastName     string    `json:"last_name" dynamodbav:"last_name"`
	FullName     string    `json:"full_name" dynamodbav:"full_name"`
	Username     string    `json:"username" dynamodbav:"username"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	DOB          string    `json:"dob" dynamodbav:"dob"` // expected format: YYYY-MM-DD, stored as given
	Gender       string    `json:"gender" dynamodbav:"gender"`
	Region       string    `json:"region" dynamodbav:"region"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}

// SignupRequest carries the nine fields the signup form collects.
// All of them are required; presence is the only check performed here.
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	FullName  string `json:"fullName" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	DOB       string `json:"dob" validate:"required"`
	Gender    string `json:"gender" validate:"required"`
	Region    string `json:"region" validate:"required"`
}

// SigninRequest identifies an account by username or email.
type SigninRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}
