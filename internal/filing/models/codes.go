package models

// TransactionCodes is the fixed 19-value code table for reported transactions.
// Grouped the way the filer instructions group them; the entry layer rejects
// anything outside this table before it reaches the record.
var TransactionCodes = []string{
	// General transaction codes
	"P", "S",
	// Rule 16b-3 transaction codes
	"A", "D", "F", "I", "M",
	// Derivative securities codes
	"C", "E", "H", "O", "X",
	// Other section 16(b) exempt and small acquisition codes
	"G", "L", "W", "Z",
	// Other transaction codes
	"J", "K", "U",
}

// AcquiredDisposedCodes are the two legal values for the acquired/disposed flag.
var AcquiredDisposedCodes = []string{"A", "D"}

// IsValidTransactionCode reports whether code appears in the transaction code
// table.
func IsValidTransactionCode(code string) bool {
	for _, c := range TransactionCodes {
		if c == code {
			return true
		}
	}
	return false
}

// IsValidAcquiredDisposedCode reports whether code is "A" or "D".
func IsValidAcquiredDisposedCode(code string) bool {
	return code == "A" || code == "D"
}
