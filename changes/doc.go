/*
Package changes implements the change-notification model: the Changes value
type and the multicast Bus that distributes it.

Changes is an immutable, non-empty set of collection identifiers. A
successful mutation publishes the set of collections it touched; two sets
combine by union.

Bus is a hot publish/subscribe channel. A subscription declares an interest
set and receives every Changes published after subscription time whose
collections intersect that set:

	sub, err := bus.Subscribe("users", "tweets")
	defer sub.Close()

	for c := range sub.Events() {
	    // react to c.Slice()
	}

Subscriptions must be closed explicitly; the bus never reclaims them on its
own. Delivery is at-most-once per subscription: publish order is preserved
per subscriber, an event that does not fit the subscription buffer is
dropped for that subscriber, and a publish racing a Close either delivers
before removal or not at all.
*/
package changes
