package evaluator

// ContractBuiltins returns the std.contract group. The arity-3 entries
// double as contract constructors: partially applied to everything but
// the label and value, they are completed by ApplyContract.
func ContractBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"apply": {
			Name:  "contract.apply",
			Arity: 3,
			Fn: func(e *Evaluator, args ...Object) Object {
				label, err := argLabel(e, "contract.apply", args[1])
				if err != nil {
					return err
				}
				return e.ApplyContract(args[0], label, args[2])
			},
		},
		"blame": {
			Name:  "contract.blame",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				label, err := argLabel(e, "contract.blame", args[0])
				if err != nil {
					return err
				}
				return e.Blame(label)
			},
		},
		"blame_with_message": {
			Name:  "contract.blame_with_message",
			Arity: 2,
			Fn: func(e *Evaluator, args ...Object) Object {
				msg, err := argString(e, "contract.blame_with_message", args[0])
				if err != nil {
					return err
				}
				label, err := argLabel(e, "contract.blame_with_message", args[1])
				if err != nil {
					return err
				}
				return e.Blame(label.WithMessage(msg))
			},
		},
		"label_with_message": {
			Name:  "contract.label_with_message",
			Arity: 2,
			Fn: func(e *Evaluator, args ...Object) Object {
				msg, err := argString(e, "contract.label_with_message", args[0])
				if err != nil {
					return err
				}
				label, err := argLabel(e, "contract.label_with_message", args[1])
				if err != nil {
					return err
				}
				return label.WithMessage(msg)
			},
		},
		"from_predicate": {
			Name:  "contract.from_predicate",
			Arity: 3,
			Fn:    fromPredicateContract,
		},
		"from_validator": {
			Name:  "contract.from_validator",
			Arity: 3,
			Fn:    fromValidatorContract,
		},
		"any_of": {
			Name:  "contract.any_of",
			Arity: 3,
			Fn:    anyOfContract,
		},
	}
}

// fromPredicateContract turns a boolean function into a contract. The
// predicate sees the value only; failures get a generic message.
func fromPredicateContract(e *Evaluator, args ...Object) Object {
	pred := args[0]
	label, err := argLabel(e, "contract.from_predicate", args[1])
	if err != nil {
		return err
	}
	value := args[2]

	result := e.callValue(pred, label.Tok, value)
	if isError(result) {
		return result
	}
	ok, isBool := result.(*Boolean)
	if !isBool {
		return e.newErrorKind(ErrTypeMismatch, label.Tok,
			"predicate returned %s, expected a boolean", typeName(result))
	}
	if !ok.Value {
		return e.Blame(label.WithMessage("predicate failed"))
	}
	return value
}

// fromValidatorContract turns a function returning 'Ok or 'Error msg
// into a contract; the validator's message reaches the blame error.
func fromValidatorContract(e *Evaluator, args ...Object) Object {
	validator := args[0]
	label, err := argLabel(e, "contract.from_validator", args[1])
	if err != nil {
		return err
	}
	value := args[2]

	result := e.callValue(validator, label.Tok, value)
	if isError(result) {
		return result
	}
	switch r := result.(type) {
	case *EnumTag:
		if r.Name == "Ok" {
			return value
		}
	case *EnumVariant:
		if r.Name == "Ok" {
			return value
		}
		if r.Name == "Error" {
			payload := e.Force(r.Payload)
			if isError(payload) {
				return payload
			}
			msg, isStr := payload.(*Str)
			if !isStr {
				return e.newErrorKind(ErrTypeMismatch, label.Tok,
					"validator error payload is %s, expected a string", typeName(payload))
			}
			return e.Blame(label.WithMessage(msg.Value))
		}
	}
	return e.newErrorKind(ErrTypeMismatch, label.Tok,
		"validator returned %s, expected 'Ok or 'Error msg", typeName(result))
}

// anyOfContract accepts a value passing at least one of the given
// contracts. Contract violations are caught and the next candidate
// tried; any other error propagates.
func anyOfContract(e *Evaluator, args ...Object) Object {
	arr, err := argArray(e, "contract.any_of", args[0])
	if err != nil {
		return err
	}
	label, err := argLabel(e, "contract.any_of", args[1])
	if err != nil {
		return err
	}
	value := args[2]

	for _, el := range arr.Elements {
		contract := e.Force(el)
		if isError(contract) {
			return contract
		}
		result := e.ApplyContract(contract, label, value)
		if violation, isErr := result.(*Error); isErr {
			if violation.Kind == ErrContractViolation || violation.Kind == ErrUnexpectedField {
				continue
			}
			return violation
		}
		return result
	}
	return e.Blame(label.WithMessage("value satisfied none of the alternatives"))
}
