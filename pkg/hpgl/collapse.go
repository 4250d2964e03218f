package hpgl

// CollapsePenCommands drops redundant pen-state commands: within every run of
// consecutive PenUp/PenDown commands only the last one is kept, with its points.
//
//	IN;PU;PD;PA1000,1000;PU;PU;  ->  IN;PD;PA1000,1000;PU;
//
// The pass is optional and independent of shape extraction.
func CollapsePenCommands(cmds []Command) []Command {
	out := make([]Command, 0, len(cmds))
	for _, c := range cmds {
		if isPenState(c) && len(out) > 0 && isPenState(out[len(out)-1]) {
			out[len(out)-1] = c
			continue
		}
		out = append(out, c)
	}
	return out
}

// CollapseCanonical is [CollapsePenCommands] for canonical commands.
func CollapseCanonical(cmds []CanonicalCommand) []CanonicalCommand {
	out := make([]CanonicalCommand, 0, len(cmds))
	for _, c := range cmds {
		if isCanonicalPenState(c) && len(out) > 0 && isCanonicalPenState(out[len(out)-1]) {
			out[len(out)-1] = c
			continue
		}
		out = append(out, c)
	}
	return out
}

func isPenState(c Command) bool {
	switch c.(type) {
	case PenUp, PenDown:
		return true
	}
	return false
}

func isCanonicalPenState(c CanonicalCommand) bool {
	switch c.(type) {
	case CanonicalPenUp, CanonicalPenDown:
		return true
	}
	return false
}
