package domain

import "time"

// DefaultLifeExpectancy is used when a user has not configured one.
const DefaultLifeExpectancy = 80

// LifeStatistics summarizes a user's elapsed life-weeks relative to their
// configured life expectancy. All week counts use complete 7-day weeks.
type LifeStatistics struct {
	Age                int
	DaysLived          int
	WeeksLived         int
	RemainingWeeks     int
	TotalExpectedWeeks int
	FractionLived      float64
	NextBirthday       time.Time
	DaysUntilBirthday  int
	LifeExpectancy     int
}

// CalculateLifeStatistics computes statistics for a birth date as of today.
// lifeExpectancy is in years; values <= 0 fall back to the default. Dates are
// compared at day granularity in the dates' own locations.
func CalculateLifeStatistics(birthDate, today time.Time, lifeExpectancy int) LifeStatistics {
	if lifeExpectancy <= 0 {
		lifeExpectancy = DefaultLifeExpectancy
	}

	birth := truncateToDay(birthDate)
	now := truncateToDay(today)

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}

	daysLived := int(now.Sub(birth).Hours() / 24)
	if daysLived < 0 {
		daysLived = 0
	}
	weeksLived := daysLived / 7

	totalWeeks := lifeExpectancy * 52
	remaining := totalWeeks - weeksLived
	if remaining < 0 {
		remaining = 0
	}

	fraction := 0.0
	if totalWeeks > 0 {
		fraction = float64(weeksLived) / float64(totalWeeks)
		if fraction > 1.0 {
			fraction = 1.0
		}
	}

	nextBirthday := time.Date(now.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, now.Location())
	if nextBirthday.Before(now) {
		nextBirthday = time.Date(now.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, now.Location())
	}

	return LifeStatistics{
		Age:                age,
		DaysLived:          daysLived,
		WeeksLived:         weeksLived,
		RemainingWeeks:     remaining,
		TotalExpectedWeeks: totalWeeks,
		FractionLived:      fraction,
		NextBirthday:       nextBirthday,
		DaysUntilBirthday:  int(nextBirthday.Sub(now).Hours() / 24),
		LifeExpectancy:     lifeExpectancy,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
