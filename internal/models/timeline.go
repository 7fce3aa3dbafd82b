package models

import (
	"encoding/json"

	"github.com/Spok95/edupage-school-bot/internal/codec"
)

// TimelineItem: запись ленты уведомлений.
type TimelineItem struct {
	ID           codec.Flex             `json:"timelineid"`
	Type         codec.TimelineItemType `json:"typ"`
	User         codec.UserID           `json:"user"`
	TargetUser   codec.OptUserID        `json:"target_user"`
	UserName     string                 `json:"user_meno"`
	Owner        string                 `json:"vlastnik"`
	Text         string                 `json:"text"`
	Data         json.RawMessage        `json:"data"`
	Reactions    codec.Flex             `json:"pocet_reakcii"`
	ReactionTo   codec.OptInt           `json:"reakcia_na"`
	Timestamp    codec.DateTime         `json:"timestamp"`
	TimeAdded    codec.DateTime         `json:"cas_pridania"`
	TimeAddedBTC codec.DateTime         `json:"cas_pridania_btc"`
	TimeOfEvent  codec.DateTime         `json:"cas_udalosti"`
}
