package domain

import "time"

// UTMParameters são os parâmetros de rastreamento associados a uma visita
type UTMParameters struct {
	Source   string `json:"source"`
	Medium   string `json:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty"`
	Content  string `json:"content,omitempty"`
	Term     string `json:"term,omitempty"`
}

// Moment é um ponto de contato (sessão) da jornada do cliente
type Moment struct {
	OccurredAt    time.Time     `json:"occurred_at"`
	Source        string        `json:"source"`
	UTMParameters UTMParameters `json:"utm_parameters"`
}

// CustomerJourney lista os momentos em ordem cronológica, como recebidos da loja
type CustomerJourney struct {
	Moments          []Moment `json:"moments"`
	DaysToConversion int      `json:"days_to_conversion"`
}

type Order struct {
	Name            string           `json:"name"`
	ProcessedAt     time.Time        `json:"processed_at"`
	CustomerJourney *CustomerJourney `json:"customer_journey,omitempty"`
}

// SessionRow é a linha de uma sessão na visão de jornada
type SessionRow struct {
	Label        string `json:"label"`
	RelativeTime string `json:"relative_time"`
	SourceLabel  string `json:"source_label"`
}

// OrderSummary resume um pedido. SessionCount e DaysToConversion são nil
// quando o pedido não tem jornada.
type OrderSummary struct {
	Name                 string       `json:"name"`
	ProcessedAtFormatted string       `json:"processed_at_formatted"`
	SessionCount         *int         `json:"session_count"`
	DaysToConversion     *int         `json:"days_to_conversion"`
	Sessions             []SessionRow `json:"sessions"`
}

type SessionOverview struct {
	AverageMomentCount      *float64       `json:"average_moment_count"`
	AverageDaysToConversion *float64       `json:"average_days_to_conversion"`
	Orders                  []OrderSummary `json:"orders"`
}

// SessionOverviewRequest é o corpo do endpoint de visão de sessões
type SessionOverviewRequest struct {
	Since    string `json:"since"`
	Until    string `json:"until"`
	ShopName string `json:"shop_name"`
}
