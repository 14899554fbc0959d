package service

import (
	"fmt"
	"math/rand"
	"time"
)

const maxTicketAttempts = 25

// ticketNumber formats VIS-YYYYMMDD-NNNNN for the calendar date of now.
func ticketNumber(now time.Time, n int) string {
	return fmt.Sprintf("VIS-%s-%05d", now.Format("20060102"), n%100000)
}

func randomTicketSuffix() int {
	return rand.Intn(100000)
}
