package domain

// Default symbols and limits used by DefaultProfile.
const (
	// DefaultLambda is the display symbol for the empty string.
	DefaultLambda = "λ"

	// DefaultStackBottom is pushed onto a PDA stack before a run starts.
	DefaultStackBottom = "Z"

	// DefaultBlank is the symbol an empty tape cell reads as.
	DefaultBlank = "□"

	// DefaultWildcard matches any non-blank cell on read and echoes it on write.
	DefaultWildcard = "~"

	// DefaultBudget is the number of configurations a run may create before
	// its BudgetPolicy is consulted.
	DefaultBudget = 10000
)
