// Package chart builds declarative ECharts option objects from raw label and
// value slices. Every builder is pure: the same input always yields the same
// option and inputs are never modified.
package chart

// Series colours.
const (
	ColorIn      = "#67C23A"
	ColorOut     = "#E6A23C"
	ColorAnomaly = "#F56C6C"
)

// Option is the top-level chart configuration. Fields left nil are omitted
// from the JSON so each builder only emits the keys it sets.
type Option struct {
	Tooltip *Tooltip `json:"tooltip,omitempty"`
	Legend  *Legend  `json:"legend,omitempty"`
	Grid    *Grid    `json:"grid,omitempty"`
	XAxis   *Axis    `json:"xAxis,omitempty"`
	YAxis   *Axis    `json:"yAxis,omitempty"`
	Series  []Series `json:"series"`
}

type Tooltip struct {
	Trigger     string       `json:"trigger"`
	Formatter   string       `json:"formatter,omitempty"`
	AxisPointer *AxisPointer `json:"axisPointer,omitempty"`
}

type AxisPointer struct {
	Type string `json:"type"`
}

type Legend struct {
	Orient string   `json:"orient,omitempty"`
	Left   any      `json:"left,omitempty"`
	Data   []string `json:"data"`
}

type Grid struct {
	Left         string `json:"left"`
	Right        string `json:"right"`
	Bottom       string `json:"bottom"`
	ContainLabel bool   `json:"containLabel"`
}

// Axis is a cartesian axis. BoundaryGap is a bool for category axes and a
// two-element range for value axes, hence any.
type Axis struct {
	Type        string   `json:"type"`
	BoundaryGap any      `json:"boundaryGap,omitempty"`
	Data        []string `json:"data,omitempty"`
}

type Series struct {
	Name              string     `json:"name"`
	Type              string     `json:"type"`
	Data              any        `json:"data"`
	Smooth            bool       `json:"smooth,omitempty"`
	Radius            []string   `json:"radius,omitempty"`
	AvoidLabelOverlap *bool      `json:"avoidLabelOverlap,omitempty"`
	Label             *Label     `json:"label,omitempty"`
	Emphasis          *Emphasis  `json:"emphasis,omitempty"`
	LabelLine         *LabelLine `json:"labelLine,omitempty"`
	ItemStyle         *ItemStyle `json:"itemStyle,omitempty"`
}

type Label struct {
	Show       bool   `json:"show"`
	Position   string `json:"position,omitempty"`
	FontSize   string `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
}

type Emphasis struct {
	Label *Label `json:"label,omitempty"`
}

type LabelLine struct {
	Show bool `json:"show"`
}

type ItemStyle struct {
	Color string `json:"color"`
}

// PieItem is one named slice of a pie series.
type PieItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func defaultGrid() *Grid {
	return &Grid{Left: "3%", Right: "4%", Bottom: "3%", ContainLabel: true}
}

// TrendOption builds a dual line chart of stock entering ("In") and leaving
// ("Out") the warehouse over the given dates.
func TrendOption(dates []string, in, out []int64) Option {
	return Option{
		Tooltip: &Tooltip{Trigger: "axis"},
		Legend:  &Legend{Data: []string{"In", "Out"}},
		Grid:    defaultGrid(),
		XAxis:   &Axis{Type: "category", BoundaryGap: false, Data: orEmpty(dates)},
		YAxis:   &Axis{Type: "value"},
		Series: []Series{
			{Name: "In", Type: "line", Data: orEmpty(in), Smooth: true, ItemStyle: &ItemStyle{Color: ColorIn}},
			{Name: "Out", Type: "line", Data: orEmpty(out), Smooth: true, ItemStyle: &ItemStyle{Color: ColorOut}},
		},
	}
}

// CompositionOption builds a doughnut chart. The legend lists the item names
// in input order and the series data is the input slice itself.
func CompositionOption(items []PieItem) Option {
	items = orEmpty(items)
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	avoidOverlap := false
	return Option{
		Tooltip: &Tooltip{Trigger: "item", Formatter: "{a} <br/>{b}: {c} ({d}%)"},
		Legend:  &Legend{Orient: "vertical", Left: 10, Data: names},
		Series: []Series{{
			Name:              "Stock",
			Type:              "pie",
			Radius:            []string{"50%", "70%"},
			AvoidLabelOverlap: &avoidOverlap,
			Label:             &Label{Show: false, Position: "center"},
			Emphasis:          &Emphasis{Label: &Label{Show: true, FontSize: "30", FontWeight: "bold"}},
			LabelLine:         &LabelLine{Show: false},
			Data:              items,
		}},
	}
}

// AnomalyOption builds a horizontal bar chart with one bar per supplier.
func AnomalyOption(supplierNames []string, scores []float64) Option {
	return Option{
		Tooltip: &Tooltip{Trigger: "axis", AxisPointer: &AxisPointer{Type: "shadow"}},
		Grid:    defaultGrid(),
		XAxis:   &Axis{Type: "value", BoundaryGap: []float64{0, 0.01}},
		YAxis:   &Axis{Type: "category", Data: orEmpty(supplierNames)},
		Series: []Series{
			{Name: "Anomaly Score", Type: "bar", Data: orEmpty(scores), ItemStyle: &ItemStyle{Color: ColorAnomaly}},
		},
	}
}

// orEmpty turns a nil slice into an empty one so it marshals as [] not null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
