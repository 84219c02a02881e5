package services

import (
	"fmt"
	"strings"

	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// NightlyHour is the local hour from which the nightly cleanup reminder may fire.
const NightlyHour = 20

// ExtraItemsText describes the items after the first one:
// nothing for a single item, the second name for two, a count otherwise.
func ExtraItemsText(names []string) string {
	switch len(names) {
	case 0, 1:
		return ""
	case 2:
		return fmt.Sprintf("and '%s'", names[1])
	default:
		return fmt.Sprintf("and %d other items", len(names)-1)
	}
}

func itemList(names []string) string {
	return strings.TrimSpace(fmt.Sprintf("'%s' %s", names[0], ExtraItemsText(names)))
}

// ExpiredMessage warns that items in entry have passed their expiration date.
func ExpiredMessage(entry string, names []string) models.Message {
	return models.Message{
		Title: "Expiration warning for " + entry,
		Body:  fmt.Sprintf("%d items have passed expiration!", len(names)),
	}
}

// ExpiringMessage warns that items in entry will expire soon.
func ExpiringMessage(entry string, names []string) models.Message {
	return models.Message{
		Title: "Expiring soon in " + entry,
		Body:  itemList(names) + " will expire soon",
	}
}

// NeededMessage reminds the household what entry still needs.
func NeededMessage(entry string, names []string) models.Message {
	return models.Message{
		Title: "Shopping reminder for " + entry,
		Body:  "You still need " + itemList(names),
	}
}

// NightlyMessage asks the household to clear out consumed or spoiled food.
func NightlyMessage(have int) models.Message {
	return models.Message{
		Title: "Nightly fridge cleanup",
		Body:  fmt.Sprintf("%d items are in your fridge. Mark anything eaten or spoiled.", have),
	}
}

// NearbyMessage points out that needed items can be bought at a nearby store.
func NearbyMessage(stores []string, needed int) models.Message {
	title := "A store is nearby"
	if len(stores) > 0 {
		title = stores[0] + " is nearby"
	}
	body := fmt.Sprintf("You need %d items.", needed)
	if len(stores) > 1 {
		body += fmt.Sprintf(" %d other stores are close too.", len(stores)-1)
	}
	return models.Message{Title: title, Body: body}
}
