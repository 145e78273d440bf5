// Package timezone pins every wall-clock operation to the configured
// APP_TIMEZONE (an IANA name such as "Asia/Jakarta").
//
// Booking check-in days are calendar days in this zone: a tanggalPesan of
// "2025-03-01" is parsed with Parse(constant.DayFormat, ...) and stored as
// midnight local time, and day filters span [midnight, next midnight).
package timezone
