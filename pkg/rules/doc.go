// Package rules implements the declarative validation engine: composable
// schema nodes evaluated against a single value plus a read-only snapshot of
// the whole answer document, so a rule can depend on answers given elsewhere
// in the same form.
//
// Schemas never panic and never return Go errors for user input; every
// violation is reported as an Issue with a stable kind such as "base",
// "string.max" or "dateRange.endDate.beforeStartDate". Conditional branches
// are resolved left to right before type validation runs, and a branch whose
// referenced answer is missing or unusable resolves to its otherwise arm so
// one missing upstream answer never produces a second downstream complaint.
package rules
