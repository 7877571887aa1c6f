package kgprofile

import (
	"github.com/charmbracelet/huh"
)

// promptInput asks for a single line of input, pre-filled with defaultValue.
func promptInput(title, defaultValue string) (string, error) {
	result := defaultValue

	err := huh.NewInput().
		Title(title).
		Value(&result).
		Run()

	return result, err
}

// promptSecret asks for a value without echoing it, used for the API key.
func promptSecret(title string) (string, error) {
	var result string

	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&result).
		Run()

	return result, err
}
