package payment

import "strings"

var instructionMap = map[Method][]string{
	MethodCOD: {
		"Your order will be delivered to the shipping address",
		"Keep {{amount}} in cash ready when the courier arrives",
		"Pay the courier directly and keep the receipt",
	},
	MethodVisa: {
		"{{amount}} has been charged to your Visa card",
		"Order #{{order_id}} will be dispatched by the vendor",
	},
	MethodMastercard: {
		"{{amount}} has been charged to your Mastercard",
		"Order #{{order_id}} will be dispatched by the vendor",
	},
}

// GetInstructions returns the receipt steps for a method, with placeholders.
func GetInstructions(m Method) []string {
	if steps, ok := instructionMap[m]; ok {
		out := make([]string, len(steps))
		copy(out, steps)
		return out
	}
	return []string{}
}

type InstructionVars map[string]string

func InjectVariables(steps []string, vars InstructionVars) []string {
	result := make([]string, 0, len(steps))
	for _, step := range steps {
		for key, value := range vars {
			step = strings.ReplaceAll(step, "{{"+key+"}}", value)
		}
		result = append(result, step)
	}
	return result
}
