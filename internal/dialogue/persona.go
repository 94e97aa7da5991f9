package dialogue

import (
	"fmt"
	"strings"
)

// BuildPersona renders the system prompt for the avatar. The action listing
// comes from the same catalog the extractor resolves against, so the model
// can only name actions the client can perform.
func BuildPersona(name string, catalog *Catalog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, a cheerful virtual companion rendered as a 3D avatar. ", name)
	b.WriteString("Speak casually and warmly, in short sentences, like a close friend. ")
	b.WriteString("Keep replies to a few sentences. Do not use markdown, lists, or emoji.\n\n")

	b.WriteString("You can perform these animations:\n")
	for _, id := range catalog.IDs() {
		fmt.Fprintf(&b, "- %s\n", id)
	}

	b.WriteString("\nWhen an animation fits the moment, append a directive to the sentence ")
	b.WriteString("it belongs to, exactly in this form: [ACTION: <animation>]. ")
	b.WriteString("Use at most one directive per reply and only animations from the list.")

	return b.String()
}
