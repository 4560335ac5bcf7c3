// Package normalize turns raw grammar matches into typed records: kind
// codes become enums, years and amounts become integers, and absent
// optional fields receive the sentinel values that participate in natural
// keys.
//
// Two rules live here and nowhere else. The episode substitution rule: a
// production reference with no episode title but a broadcast date uses the
// date text as the episode identity, so both spellings resolve to the same
// production. The overflow rule: a currency amount beyond int64 becomes the
// -1 "not representable" sentinel instead of a wrong-but-plausible number;
// callers are told about the overflow so it can be reported.
package normalize
