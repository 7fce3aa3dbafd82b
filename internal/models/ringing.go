package models

import "github.com/Spok95/edupage-school-bot/internal/codec"

// RingingInterval: строка расписания звонков.
type RingingInterval struct {
	Ordinal codec.Flex  `json:"name"`
	Start   codec.Clock `json:"starttime"`
	End     codec.Clock `json:"endtime"`
}
