package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Seoul")
	if err != nil {
		panic(err)
	}
}

// force timezone to be KST because the portal renders every date in
// korean local time with no offset, so interpreting them anywhere
// else shifts Year()/Month()/Day()/Hour()/... results
func Now() time.Time {
	return time.Now().In(Location)
}
