package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionReview      = "review"
	actionReviewStart = "review_start"
	actionSettings    = "settings"
	actionOnboarding  = "onboarding"
)

// Settings toggles.
const (
	settingsSound         = "sound"
	settingsNotifications = "notifications"
	settingsDiacritics    = "diacritics"
	settingsFreeze        = "freeze"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns params[i] as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func buildReviewAnswerCallback(question, option int) string {
	return callbackData{
		Action: actionReview,
		Params: []string{strconv.Itoa(question), strconv.Itoa(option)},
	}.encode()
}

func buildReviewStartCallback() string {
	return callbackData{Action: actionReviewStart}.encode()
}

func buildSettingsToggleCallback(field string) string {
	return callbackData{Action: actionSettings, Params: []string{field}}.encode()
}

func buildOnboardingGoalCallback(minutes int) string {
	return callbackData{Action: actionOnboarding, Params: []string{strconv.Itoa(minutes)}}.encode()
}
