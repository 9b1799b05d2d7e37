package hearing

// Decision is the outcome of one boxwork evaluation. Trigger carries the
// result that fired so callers can correlate and log; it is nil when Notify
// is false.
type Decision struct {
	Notify  bool
	Trigger *JudicialResult
}

// DecideBoxworkNotification scans the results attached to a case or
// application and reports whether a "listed for boxwork" notification must
// fire.
//
// A result qualifies only when its definition ID is the boxwork catalog
// constant and it carries a next hearing. A qualifying result triggers when
// the hearing has a date signal (listed start time or week-commencing date)
// but no allocated courtroom; an allocated room means the listing is
// already complete. The predicate is a pure OR across results, so the first
// trigger wins.
func DecideBoxworkNotification(results []JudicialResult) Decision {
	for i := range results {
		r := &results[i]
		if r.ResultDefinitionID != BoxworkResultDefinitionID {
			continue
		}
		if r.NextHearing == nil {
			continue
		}
		if r.NextHearing.status() == dateScheduled {
			return Decision{Notify: true, Trigger: r}
		}
	}
	return Decision{}
}
