package model

import "time"

type PromotionType string

const (
	PromotionBanner PromotionType = "banner"
	PromotionPopup  PromotionType = "popup"
)

type PromotionStatus string

const (
	PromotionActive   PromotionStatus = "Active"
	PromotionInactive PromotionStatus = "Inactive"
)

// DisplayRule decides when a popup becomes visible.
type DisplayRule string

const (
	DisplayImmediate  DisplayRule = "immediate"
	DisplayDelay      DisplayRule = "delay"
	DisplayExitIntent DisplayRule = "exit-intent"
)

// Promotion is a marketing banner or popup.
type Promotion struct {
	ID           string          `json:"id"`
	Type         PromotionType   `json:"type"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	Image        string          `json:"image,omitempty"`
	CTAText      string          `json:"ctaText,omitempty"`
	CTALink      string          `json:"ctaLink,omitempty"`
	Status       PromotionStatus `json:"status"`
	DisplayRule  DisplayRule     `json:"displayRule"`
	DelaySeconds int             `json:"delaySeconds,omitempty"`
	Closable     bool            `json:"closable"`
	// Audience is an optional boolean expression over the viewer's cart and login state.
	Audience string `json:"audience,omitempty"`
}

// Delay returns the popup delay, zero for non-delay rules.
func (p Promotion) Delay() time.Duration {
	if p.DisplayRule != DisplayDelay || p.DelaySeconds < 0 {
		return 0
	}
	return time.Duration(p.DelaySeconds) * time.Second
}

// PromotionView is what a session should currently render.
type PromotionView struct {
	Banner *Promotion `json:"banner,omitempty"`
	Popup  *Promotion `json:"popup,omitempty"`
}
