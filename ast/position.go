package ast

// Position classifies a frame: the four conditional-permission positions
// gate actions behind descriptor-matching selectors, the deontic positions
// derive violation or fulfillment from the governed action and conditions.
type Position string

const (
	Power      Position = "power"
	Liability  Position = "liability"
	Disability Position = "disability"
	Immunity   Position = "immunity"

	Duty        Position = "duty"
	Prohibition Position = "prohibition"
	Claim       Position = "claim"
	Privilege   Position = "privilege"
)

// PowerPositions is the set of positions carried by power frames.
var PowerPositions = map[Position]bool{
	Power:      true,
	Liability:  true,
	Disability: true,
	Immunity:   true,
}
