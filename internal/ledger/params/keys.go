package params

// Keys used for the 'key' column in the 'params' SQLite table.
// They map one-to-one onto the original contract's global state slots.
const (
	// TotalUsersKey stores the number of successful registrations.
	// Monotonically increasing.
	TotalUsersKey = "total_users"

	// TotalZombiesKey stores the number of zombies ever created.
	// Monotonically increasing.
	TotalZombiesKey = "total_zombies"

	// TotalLessonsKey stores the number of available lessons.
	// Owner-adjustable, but never downwards.
	TotalLessonsKey = "total_lessons"

	// RewardPerLessonKey stores the base lesson reward in reward units.
	// Owner-adjustable, always positive.
	RewardPerLessonKey = "reward_per_lesson"

	// ContractOwnerKey stores the owner's wallet address.
	// Written exactly once when the ledger is first primed.
	ContractOwnerKey = "contract_owner"
)
