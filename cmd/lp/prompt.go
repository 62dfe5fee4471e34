package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"liquidityPilot/internal/chain"
)

var (
	special = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warn    = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F87"}
	subtle  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#6C6C6C"}

	okStyle    = lipgloss.NewStyle().Foreground(special).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(warn).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(subtle).Width(16)
)

func printOK(format string, args ...interface{}) {
	fmt.Println(okStyle.Render(fmt.Sprintf(format, args...)))
}

func printErr(format string, args ...interface{}) {
	fmt.Println(errStyle.Render(fmt.Sprintf(format, args...)))
}

func printField(label, value string) {
	fmt.Println(labelStyle.Render(label) + value)
}

// promptPrivateKey asks for a signing key until it parses.
func promptPrivateKey() (string, error) {
	var key string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Private key").
				Description("Hex encoded, 0x prefix optional").
				EchoMode(huh.EchoModePassword).
				Value(&key).
				Validate(func(s string) error {
					_, err := chain.ParsePrivateKey(s)
					return err
				}),
		),
	).Run()
	if err != nil {
		return "", err
	}
	return key, nil
}

func confirmWithdraw() (bool, error) {
	var confirm bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Withdraw from pool?").
				Affirmative("Yes, withdraw").
				Negative("No, keep position").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return confirm, nil
}
