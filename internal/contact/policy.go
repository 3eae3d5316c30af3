package contact

// Reminder priority policy: tier to numeric priority, lower is more
// important. Unknown tiers fall back to DefaultPriority.

// DefaultPriority is assigned to unknown tiers and to holiday feed
// entries, which rank below every tiered contact.
const DefaultPriority = 5

var tierPriorities = map[Tier]int{
	TierGold:         1,
	TierFamily:       2,
	TierFriend:       3,
	TierAcquaintance: 4,
}

// PriorityOf returns the reminder priority for a tier.
func PriorityOf(tier Tier) int {
	if p, ok := tierPriorities[tier]; ok {
		return p
	}
	return DefaultPriority
}

// Priority returns the contact's reminder priority.
func (c *Contact) Priority() int {
	return PriorityOf(c.Tier)
}

// earlyOffsets maps a tier to the days-before-event offsets at which an
// extra reminder fires. Tiers without an entry get no early reminders.
var earlyOffsets = map[Tier][]int{
	TierGold:   {3, 1},
	TierFamily: {1},
}

// EarlyOffsetsOf returns the early-reminder offsets for a tier, in
// descending order. The slice must not be mutated.
func EarlyOffsetsOf(tier Tier) []int {
	return earlyOffsets[tier]
}

// ShouldGetEarlyBirthdayReminder reports whether an early birthday
// reminder fires for this contact at the given days-until-birthday.
func (c *Contact) ShouldGetEarlyBirthdayReminder(daysUntil int) bool {
	for _, offset := range EarlyOffsetsOf(c.Tier) {
		if daysUntil == offset {
			return true
		}
	}
	return false
}

// DisplayTier returns the human-readable tier name.
func (c *Contact) DisplayTier() string {
	switch c.Tier {
	case TierGold:
		return "Gold Tier"
	case TierFamily:
		return "Family"
	case TierFriend:
		return "Friend"
	case TierAcquaintance:
		return "Acquaintance"
	}
	return string(c.Tier)
}
