package models

import "github.com/golang-jwt/jwt/v5"

// StoreClaims are the JWT claims carried by storefront callers of the rates
// API: which store (and shipping method instance) the calculation is for.
type StoreClaims struct {
	StoreID    string `json:"store_id"`
	InstanceID int    `json:"instance_id"`
	jwt.RegisteredClaims
}
