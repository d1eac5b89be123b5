package messaging

const pairKeySeparator = "_"

// PairKey returns the key shared by both orderings of a participant pair
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + pairKeySeparator + b
}

func roomTopic(chatroomID string) string { return "room:" + chatroomID }

func pairTopic(pairKey string) string { return "pair:" + pairKey }
