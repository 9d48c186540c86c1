package users

// User types
const (
	TypeAdmin = "admin"
	TypeUser  = "user"
)

// Location is an optional geo point attached to an address.
type Location struct {
	Lat float64 `dynamodbav:"lat" json:"lat"`
	Lng float64 `dynamodbav:"lng" json:"lng"`
}

// Address is embedded in a user's profile. Orders freeze a deep copy of the
// chosen address at placement time, so later edits never touch order history.
type Address struct {
	AddressID string   `dynamodbav:"address_id" json:"addressId"`
	Label     string   `dynamodbav:"label" json:"label"`
	Street    string   `dynamodbav:"street" json:"street"`
	City      string   `dynamodbav:"city" json:"city"`
	State     string   `dynamodbav:"state" json:"state"`
	Pincode   string   `dynamodbav:"pincode" json:"pincode"`
	Country   string   `dynamodbav:"country" json:"country"`
	Landmark  string   `dynamodbav:"landmark,omitempty" json:"landmark,omitempty"`
	Mobile    string   `dynamodbav:"mobile,omitempty" json:"mobile,omitempty"`
	IsDefault bool     `dynamodbav:"is_default" json:"isDefault"`
	Location  Location `dynamodbav:"location" json:"location"`
}

// User is the item stored in the users table.
type User struct {
	UserID       string    `dynamodbav:"user_id" json:"id"` // PK
	Name         string    `dynamodbav:"name" json:"name"`
	Email        string    `dynamodbav:"email" json:"email"`
	Mobile       string    `dynamodbav:"mobile" json:"mobile"`
	PasswordHash string    `dynamodbav:"password_hash" json:"-"`
	UserType     string    `dynamodbav:"user_type" json:"userType"` // admin | user
	Addresses    []Address `dynamodbav:"addresses,omitempty" json:"addresses"`
}

// AddressByID returns the embedded address with the given id, or nil.
func (u *User) AddressByID(addressID string) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].AddressID == addressID {
			return &u.Addresses[i]
		}
	}
	return nil
}
