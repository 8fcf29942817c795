// Package timezone holds the application clock zone (APP_TIMEZONE) and resolves listing zones.
//
// Sync timestamps and log output use the application zone. Anything that decides which
// calendar day it is for a guest, like short-notice cancellations or last-minute discounts,
// must use the listing's own zone:
//
//	loc := timezone.Load(listing.Timezone)
//	today := timezone.Today(loc)
package timezone
