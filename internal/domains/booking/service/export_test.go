package service

import "time"

func SetNow(b Booking, now func() time.Time) {
	b.(*serviceImpl).now = now
}
