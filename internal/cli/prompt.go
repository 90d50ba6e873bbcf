package cli

import (
	"github.com/AlecAivazis/survey/v2"

	"github.com/p5gen/p5gen/internal/template/model"
)

// promptProjectName asks for the project name when none was given on the
// command line.
func promptProjectName() (string, error) {
	var name string
	prompt := &survey.Input{
		Message: "Project name:",
		Default: "my-sketch",
	}
	if err := survey.AskOne(prompt, &name, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return name, nil
}

// promptSketchMode asks which p5 API surface the project uses.
func promptSketchMode() (model.SketchMode, error) {
	var choice string
	prompt := &survey.Select{
		Message: "Sketch mode:",
		Options: []string{string(model.ModeGlobal), string(model.ModeInstance)},
		Default: string(model.ModeGlobal),
		Help:    "Global mode exposes setup/draw at the top level; instance mode scopes p5 to an explicit instance.",
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return model.SketchMode(choice), nil
}

// promptDelivery asks where the generated project loads p5.js from.
func promptDelivery() (model.DeliveryMode, error) {
	var choice string
	prompt := &survey.Select{
		Message: "Load p5.js from:",
		Options: []string{string(model.DeliveryCDN), string(model.DeliveryLocal)},
		Default: string(model.DeliveryCDN),
		Help:    "CDN references a public URL; local downloads a copy into lib/.",
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return model.DeliveryMode(choice), nil
}
