// Package tui walks a form schema as a sequence of terminal prompts, feeding
// answers into a session controller. The prompt driver is injectable so the
// flow can be exercised in tests without a terminal.
package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/session"
)

// Action reports how a fill session ended.
type Action string

const (
	ActionSubmitted  Action = "submitted"
	ActionDraftSaved Action = "draft_saved"
	ActionDiscarded  Action = "discarded"
)

const (
	actionLabelSubmit  = "Submit"
	actionLabelDraft   = "Save draft"
	actionLabelDiscard = "Discard"
)

// Filler prompts through every field of a schema and then offers the
// lifecycle actions the controller supports.
type Filler struct {
	driver     PromptDriver
	allowDraft bool
	pageSize   int
}

// New builds a filler backed by a survey prompt driver unless an option
// swaps it out.
func New(options ...Option) *Filler {
	f := &Filler{
		driver:     newSurveyDriver(),
		allowDraft: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Fill walks the schema's sections in order, prompting for each field and
// pushing answers into the controller, then runs the action prompt. When
// Submit fails validation the erroring fields are re-prompted and the action
// prompt runs again. Returns how the session ended.
func (f *Filler) Fill(ctx context.Context, ctrl *session.Controller, form schema.FormSchema) (Action, error) {
	if ctrl == nil {
		return ActionDiscarded, fmt.Errorf("tui: nil controller")
	}

	if form.Title != "" {
		if err := f.driver.Info(ctx, form.Title); err != nil {
			return ActionDiscarded, err
		}
	}

	for _, section := range form.Sections {
		if err := f.promptSection(ctx, ctrl, section); err != nil {
			return ActionDiscarded, err
		}
	}

	for {
		action, err := f.promptAction(ctx, ctrl)
		if err != nil {
			return ActionDiscarded, err
		}
		switch action {
		case actionLabelDiscard:
			return ActionDiscarded, nil
		case actionLabelDraft:
			if !ctrl.SaveDraft(ctx) {
				if err := f.driver.Info(ctx, "Draft saving is not available for this record."); err != nil {
					return ActionDiscarded, err
				}
				continue
			}
			if notice := ctrl.Notice(); notice != "" {
				if err := f.driver.Info(ctx, notice); err != nil {
					return ActionDiscarded, err
				}
				continue
			}
			return ActionDraftSaved, nil
		default:
			if ctrl.Submit(ctx) {
				if notice := ctrl.Notice(); notice != "" {
					if err := f.driver.Info(ctx, notice); err != nil {
						return ActionDiscarded, err
					}
					continue
				}
				return ActionSubmitted, nil
			}
			if err := f.repromptErrors(ctx, ctrl, form); err != nil {
				return ActionDiscarded, err
			}
		}
	}
}

func (f *Filler) promptSection(ctx context.Context, ctrl *session.Controller, section schema.FormSection) error {
	if section.Title != "" {
		if err := f.driver.Info(ctx, "-- "+section.Title); err != nil {
			return err
		}
	}
	for _, field := range section.Fields {
		if err := f.promptField(ctx, ctrl, field); err != nil {
			return err
		}
	}
	return nil
}

// repromptErrors walks the failing fields in schema order so the user fixes
// them in the same sequence they were asked.
func (f *Filler) repromptErrors(ctx context.Context, ctrl *session.Controller, form schema.FormSchema) error {
	errs := ctrl.Errors()
	for _, field := range form.Fields() {
		msg, ok := errs[field.Name]
		if !ok {
			continue
		}
		if err := f.driver.Info(ctx, fmt.Sprintf("%s: %s", field.Label, msg)); err != nil {
			return err
		}
		if err := f.promptField(ctx, ctrl, field); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) promptField(ctx context.Context, ctrl *session.Controller, field schema.FormField) error {
	current := ctrl.Data().Get(field.Name)
	if current.IsAbsent() {
		current = field.DefaultValue
	}

	switch field.Type {
	case schema.FieldTypeText, schema.FieldTypeEmail, schema.FieldTypeDate, schema.FieldTypeDatetime:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message: fieldMessage(field),
			Default: current.Text(),
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		ctrl.ChangeField(field.Name, schema.String(answer))

	case schema.FieldTypePassword:
		answer, err := f.driver.Password(ctx, InputConfig{
			Message: fieldMessage(field),
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		ctrl.ChangeField(field.Name, schema.String(answer))

	case schema.FieldTypeTextarea:
		answer, err := f.driver.TextArea(ctx, InputConfig{
			Message: fieldMessage(field),
			Default: current.Text(),
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		ctrl.ChangeField(field.Name, schema.String(answer))

	case schema.FieldTypeToggle:
		on, _ := current.AsBool()
		answer, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Label,
			Default: on,
		})
		if err != nil {
			return err
		}
		ctrl.ChangeField(field.Name, schema.Bool(answer))

	case schema.FieldTypeDropdown, schema.FieldTypeRadio:
		labels := optionLabels(field.Options)
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      fieldMessage(field),
			Options:      labels,
			DefaultIndex: selectedIndex(field.Options, current),
			PageSize:     f.pageSize,
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(field.Options) {
			ctrl.ChangeField(field.Name, schema.String(field.Options[idx].Value))
		}

	case schema.FieldTypeCheckbox:
		labels := optionLabels(field.Options)
		picked, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message:  fieldMessage(field),
			Options:  labels,
			Defaults: selectedIndices(field.Options, current),
			PageSize: f.pageSize,
		})
		if err != nil {
			return err
		}
		values := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(field.Options) {
				values = append(values, field.Options[idx].Value)
			}
		}
		ctrl.ChangeField(field.Name, schema.Strings(values...))

	default:
		// Unknown types are skipped, same as the HTML renderer.
	}
	return nil
}

func (f *Filler) promptAction(ctx context.Context, ctrl *session.Controller) (string, error) {
	actions := []string{actionLabelSubmit}
	if f.allowDraft {
		actions = append(actions, actionLabelDraft)
	}
	actions = append(actions, actionLabelDiscard)

	idx, err := f.driver.Select(ctx, SelectConfig{
		Message: "Done. What next?",
		Options: actions,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return actionLabelDiscard, nil
	}
	return actions[idx], nil
}

func fieldMessage(field schema.FormField) string {
	if field.Required {
		return field.Label + " *"
	}
	return field.Label
}

func optionLabels(options []schema.FieldOption) []string {
	out := make([]string, len(options))
	for i, option := range options {
		out[i] = option.Label
	}
	return out
}

func selectedIndex(options []schema.FieldOption, current schema.Value) int {
	selected, ok := current.AsString()
	if !ok {
		return -1
	}
	for i, option := range options {
		if option.Value == selected {
			return i
		}
	}
	return -1
}

func selectedIndices(options []schema.FieldOption, current schema.Value) []int {
	var out []int
	for i, option := range options {
		if current.Contains(option.Value) {
			out = append(out, i)
		}
	}
	return out
}
