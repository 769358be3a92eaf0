// Package commands exposes the converter's go-command handlers to host
// applications that route work through a registry or dispatcher.
package commands

import (
	"errors"

	markdowncmd "github.com/goliatone/go-adf/internal/commands/markdown"
	"github.com/goliatone/go-adf/internal/di"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or RPC.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands registers the conversion and body resolution
// handlers of container with the configured registry and dispatcher. When the
// container was built without Features.Commands the handlers are built here,
// gated on nothing, so hosts can opt in late.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	set := container.CommandHandlers()
	if set == nil || opts.LoggerProvider != nil {
		built, err := markdowncmd.RegisterMarkdownCommands(nil,
			container.MarkdownService(),
			container.BodyResolver(),
			provider,
			markdowncmd.FeatureGates{},
		)
		if err != nil {
			return &RegistrationResult{}, err
		}
		set = built
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0, 2),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error
	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	register(set.Convert)
	register(set.Resolve)

	return result, errs
}
