package models

import "time"

// Carer statuses. A non-active carer can still be assigned; validation
// surfaces it as a warning, not a block.
const (
	CarerActive   = "active"
	CarerInactive = "inactive"
	CarerOnLeave  = "on_leave"
	CarerTraining = "training"
)

// Carer is a care-staff resource assignable to bookings.
type Carer struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Client is a person receiving care. The Stripe references back the
// late-cancellation fee charge.
type Client struct {
	ID                    string    `bson:"id" json:"id"`
	Name                  string    `bson:"name" json:"name"`
	Address               string    `bson:"address,omitempty" json:"address,omitempty"`
	Postcode              string    `bson:"postcode,omitempty" json:"postcode,omitempty"`
	Phone                 string    `bson:"phone,omitempty" json:"phone,omitempty"`
	StripeCustomerID      string    `bson:"stripe_customer_id,omitempty" json:"-"`
	StripePaymentMethodID string    `bson:"stripe_payment_method_id,omitempty" json:"-"`
	CreatedAt             time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time `bson:"updated_at" json:"updated_at"`
}
