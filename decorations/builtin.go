package decorations

var defaultRegistry = MustNewRegistry(
	Decoration{Name: "ComponentGradient", Kind: KindGradient},
	Decoration{Name: "ActorGradient", Kind: KindGradient},
	Decoration{Name: "FunctionGradient", Kind: KindGradient},

	Decoration{Name: "ErrorSymbol"},
	Decoration{Name: "RequirementSymbol"},
	Decoration{Name: "StickFigureSymbol"},
	Decoration{Name: "PortSymbol"},
	Decoration{Name: "ComponentPortSymbol"},

	Decoration{Name: "LogicalComponentSymbol", Dependencies: []string{"ComponentGradient"}},
	Decoration{Name: "LogicalHumanComponentSymbol", Dependencies: []string{"ComponentGradient", "StickFigureSymbol"}},
	Decoration{Name: "LogicalActorSymbol", Dependencies: []string{"ActorGradient"}},
	Decoration{Name: "LogicalHumanActorSymbol", Dependencies: []string{"StickFigureSymbol"}},
	Decoration{Name: "LogicalFunctionSymbol", Dependencies: []string{"FunctionGradient"}},
	Decoration{Name: "SystemComponentSymbol", Dependencies: []string{"ComponentGradient"}},
	Decoration{Name: "SystemActorSymbol", Dependencies: []string{"ActorGradient"}},
	Decoration{Name: "SystemHumanActorSymbol", Dependencies: []string{"StickFigureSymbol"}},
	Decoration{Name: "SystemFunctionSymbol", Dependencies: []string{"FunctionGradient"}},
	Decoration{Name: "PhysicalComponentSymbol", Dependencies: []string{"ComponentGradient"}},
	Decoration{Name: "OperationalActivitySymbol", Dependencies: []string{"FunctionGradient"}},
	Decoration{Name: "OperationalActorBoxSymbol", Dependencies: []string{"ActorGradient", "StickFigureSymbol"}},
	Decoration{Name: "OperationalActorSymbol", Dependencies: []string{"StickFigureSymbol"}},
	Decoration{Name: "EntitySymbol"},
	Decoration{Name: "OperationalCapabilitySymbol"},
	Decoration{Name: "CapabilitySymbol"},
	Decoration{Name: "MissionSymbol"},

	Decoration{Name: "FunctionalExchangeSymbol"},
	Decoration{Name: "ComponentExchangeSymbol"},
	Decoration{Name: "PhysicalLinkSymbol"},
	Decoration{Name: "OperationalExchangeSymbol"},

	Decoration{Name: "ModeSymbol"},
	Decoration{Name: "StateSymbol"},
	Decoration{Name: "FinalStateSymbol"},
	Decoration{Name: "InitialPseudoStateSymbol"},
	Decoration{Name: "TerminatePseudoStateSymbol"},
	Decoration{Name: "AndControlNodeSymbol"},
	Decoration{Name: "OrControlNodeSymbol"},
	Decoration{Name: "ItControlNodeSymbol"},

	Decoration{Name: "ArrowMark", Kind: KindMarker},
	Decoration{Name: "FineArrowMark", Kind: KindMarker},
	Decoration{Name: "DiamondMark", Kind: KindMarker},
	Decoration{Name: "FilledDiamondMark", Kind: KindMarker},
	Decoration{Name: "GeneralizationMark", Kind: KindMarker},
)

// Default returns the built-in registry.
func Default() *Registry { return defaultRegistry }

// ClassSet is a set of element classes.
type ClassSet map[string]struct{}

func newClassSet(classes ...string) ClassSet {
	s := make(ClassSet, len(classes))
	for _, c := range classes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether class is in the set.
func (s ClassSet) Has(class string) bool {
	_, ok := s[class]
	return ok
}

func union(sets ...ClassSet) ClassSet {
	out := ClassSet{}
	for _, s := range sets {
		for c := range s {
			out[c] = struct{}{}
		}
	}
	return out
}

var (
	// StartAligned 中的类标签左对齐（text-anchor: start）。
	StartAligned = newClassSet(
		"LogicalComponent", "LogicalHumanComponent", "LogicalActor", "LogicalHumanActor",
		"SystemComponent", "SystemActor", "SystemHumanActor", "PhysicalComponent",
		"PhysicalNodeComponent", "PhysicalBehaviorComponent", "Entity", "OperationalActor",
	)
	// AlwaysTopLabel 中的类即使没有子元素，标签也固定在顶部。
	AlwaysTopLabel = newClassSet("Class", "Enumeration", "DataPkg", "Region", "Mode", "State")
	// NeedsFeatureLine 中的类总是画出标签下方的特性分隔线。
	NeedsFeatureLine = newClassSet("Class", "Enumeration")
	// OnlyIcons 中的类没有文本标签，只画一个大图标。
	OnlyIcons = newClassSet("Requirement")

	FunctionPorts          = newClassSet("FIP", "FOP")
	ComponentPorts         = newClassSet("CP_IN", "CP_OUT", "CP_INOUT", "CP_UNSET")
	DirectedComponentPorts = newClassSet("CP_IN", "CP_OUT")
	AllDirectedPorts       = union(FunctionPorts, DirectedComponentPorts)
	AllPorts               = union(FunctionPorts, ComponentPorts, newClassSet("PP"))
)

// PortSymbol 返回有向端口使用的符号名：功能端口为 "Port"，组件端口为 "ComponentPort"。
func PortSymbol(class string) string {
	switch {
	case FunctionPorts.Has(class):
		return "Port"
	case ComponentPorts.Has(class):
		return "ComponentPort"
	default:
		return "Error"
	}
}
