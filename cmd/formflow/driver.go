package main

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted reports that the applicant cancelled the wizard (Ctrl+C).
var ErrAborted = errors.New("formflow: aborted")

// promptDriver abstracts the terminal prompts so the wizard walk can be
// tested with a scripted driver.
type promptDriver interface {
	Input(message, help string) (string, error)
	TextArea(message string) (string, error)
	Confirm(message string) (bool, error)
	Select(message string, options []string) (int, error)
	MultiSelect(message string, options []string) ([]int, error)
	Info(message string)
}

type surveyDriver struct{}

func (surveyDriver) Input(message, help string) (string, error) {
	var out string
	prompt := &survey.Input{Message: message, Help: help}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) TextArea(message string) (string, error) {
	var out string
	prompt := &survey.Multiline{Message: message}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Confirm(message string) (bool, error) {
	var out bool
	prompt := &survey.Confirm{Message: message}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Select(message string, options []string) (int, error) {
	var out int
	prompt := &survey.Select{Message: message, Options: options}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) MultiSelect(message string, options []string) ([]int, error) {
	var out []int
	prompt := &survey.MultiSelect{Message: message, Options: options}
	if err := survey.AskOne(prompt, &out); err != nil {
		return nil, translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Info(message string) {
	fmt.Println(message)
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
