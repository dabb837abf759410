package shopifydomain

import (
	"fmt"
	"time"
)

// OrderNode é o pedido como retornado pela Admin GraphQL API
type OrderNode struct {
	Name            string           `json:"name"`
	ProcessedAt     time.Time        `json:"processedAt"`
	CustomerJourney *CustomerJourney `json:"customerJourney"`
}

type CustomerJourney struct {
	DaysToConversion int      `json:"daysToConversion"`
	Moments          []Moment `json:"moments"`
}

// Moment só traz source e utmParameters quando é um CustomerVisit
type Moment struct {
	OccurredAt    time.Time      `json:"occurredAt"`
	Source        string         `json:"source"`
	UTMParameters *UTMParameters `json:"utmParameters"`
}

type UTMParameters struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
	Content  string `json:"content"`
	Term     string `json:"term"`
}

type OrderEdge struct {
	Node OrderNode `json:"node"`
}

type OrdersData struct {
	Orders struct {
		Edges []OrderEdge `json:"edges"`
	} `json:"orders"`
}

type Shop struct {
	Name            string `json:"name"`
	MyshopifyDomain string `json:"myshopifyDomain"`
}

type ShopData struct {
	Shop Shop `json:"shop"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

// APIError é uma falha da Admin API, seja HTTP ou erro de GraphQL
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify api error (status %d): %s", e.StatusCode, e.Message)
}
