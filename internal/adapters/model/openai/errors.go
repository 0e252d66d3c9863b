package openai

import "errors"

var errNoChoices = errors.New("completion returned no choices")
