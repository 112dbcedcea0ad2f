package redeem

import "key-redeemer/internal/model"

var messages = map[int]string{
	model.StatusInvalidKey: "The product code you've entered is not valid. Please double check to see if you've " +
		"mistyped your key. I, L, and 1 can look alike, as can V and Y, and 0 and O. ",
	model.StatusActivatedElsewhere: "The product code you've entered has already been activated by a different Steam account. " +
		"This code cannot be used again. Please contact the retailer or online seller where the " +
		"code was purchased for assistance. ",
	model.StatusRateLimited: "There have been too many recent activation attempts from this account or Internet " +
		"address. Please wait and try your product code again later. ",
	model.StatusRegionLocked: "Sorry, but this product is not available for purchase in this country. Your product key " +
		"has not been redeemed. ",
	model.StatusAlreadyOwned: "This Steam account already owns the product(s) contained in this offer. To access them, " +
		"visit your library in the Steam client. ",
	model.StatusMissingBaseGame: "The product code you've entered requires ownership of another product before " +
		"activation.\n\nIf you are trying to activate an expansion pack or downloadable content, " +
		"please first activate the original game, then activate this additional content. ",
	model.StatusRequiresPS3: "The product code you have entered requires that you first play this game on the " +
		"PlayStation®3 system before it can be registered.\n\nPlease:\n\n- Start this game on " +
		"your PlayStation®3 system\n\n- Link your Steam account to your PlayStation®3 Network " +
		"account\n\n- Connect to Steam while playing this game on the PlayStation®3 system\n\n- " +
		"Register this product code through Steam. ",
	model.StatusWalletCode: "The code you have entered is from a Steam Gift Card or Steam Wallet Code. Browse here: " +
		"https://store.steampowered.com/account/redeemwalletcode to redeem it. ",
}

const unexpectedMessage = "An unexpected error has occurred.  Your product code has not been redeemed.  Please wait " +
	"30 minutes and try redeeming the code again.  If the problem persists, please contact <a " +
	`href="https://help.steampowered.com/en/wizard/HelpWithCDKey">Steam Support</a> for ` +
	"further assistance. "

// Message returns the user-facing explanation for a failure status code.
func Message(statusCode int) string {
	if msg, ok := messages[statusCode]; ok {
		return msg
	}
	return unexpectedMessage
}
