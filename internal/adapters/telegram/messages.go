package telegram

const (
	welcomeMessage = "Hello! Here are the rental properties available right now. " +
		"Use the buttons under the list to switch pages."
	helpMessage = "/start - show the property list from the first page\n" +
		"/stop - close the list"
	unknownCommandMessage = "I’m sorry, but I don’t recognize this command. Please type /help to see the available list of commands."
	emptyListMessage      = "No properties on this page."
	closedMessage         = "The list is closed. Type /start to open it again."
	noScreenMessage       = "This list is no longer open. Type /start to open it again."
	actionNoticeMessage   = "We will contact you soon."
)
