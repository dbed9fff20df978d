package models

// FilterBefore keeps records first seen strictly before the cutoff.
// Records that carry neither a sensor nor a zone-file first-seen time
// are kept.
func FilterBefore(records []Record, before int64) []Record {
	kept := []Record{}

	for _, r := range records {
		switch {
		case r.TimeFirst != 0:
			if r.TimeFirst < before {
				kept = append(kept, r)
			}
		case r.ZoneTimeFirst != 0:
			if r.ZoneTimeFirst < before {
				kept = append(kept, r)
			}
		default:
			kept = append(kept, r)
		}
	}

	return kept
}

// FilterAfter keeps records last seen strictly after the cutoff.
func FilterAfter(records []Record, after int64) []Record {
	kept := []Record{}

	for _, r := range records {
		switch {
		case r.TimeLast != 0:
			if r.TimeLast > after {
				kept = append(kept, r)
			}
		case r.ZoneTimeLast != 0:
			if r.ZoneTimeLast > after {
				kept = append(kept, r)
			}
		default:
			kept = append(kept, r)
		}
	}

	return kept
}
