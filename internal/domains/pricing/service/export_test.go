package service

import "time"

func SetNow(p Pricing, now func() time.Time) {
	p.(*serviceImpl).now = now
}
