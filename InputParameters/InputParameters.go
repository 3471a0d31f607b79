package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/notargets/fequad/element"
)

// DefaultQuadratureOrder is used when the input file leaves QuadratureOrder unset.
const DefaultQuadratureOrder = 2

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title           string         `json:"Title"`
	QuadratureOrder int            `json:"QuadratureOrder"`
	Orders          map[string]int `json:"Orders"`    // Per family override, keyed by family name
	Tolerance       float64        `json:"Tolerance"` // Inverse map tolerance, 0 keeps the family default
	Workers         int            `json:"Workers"`   // Nodal volume goroutines, 0 is one per CPU
	MassMatrix      bool           `json:"MassMatrix"`

	orders map[element.Family]int
}

func (ip *InputParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if ip.QuadratureOrder == 0 {
		ip.QuadratureOrder = DefaultQuadratureOrder
	}
	if ip.Tolerance < 0 {
		return fmt.Errorf("negative Tolerance %g", ip.Tolerance)
	}
	if ip.Workers < 0 {
		return fmt.Errorf("negative Workers %d", ip.Workers)
	}
	ip.orders = make(map[element.Family]int, len(ip.Orders))
	for name, order := range ip.Orders {
		var f element.Family
		if f, err = element.ParseFamily(name); err != nil {
			return fmt.Errorf("Orders: %w", err)
		}
		ip.orders[f] = order
	}
	return
}

// OrderFor returns the family's override if present, else QuadratureOrder.
func (ip *InputParameters) OrderFor(f element.Family) int {
	if order, ok := ip.orders[f]; ok {
		return order
	}
	return ip.QuadratureOrder
}

func (ip *InputParameters) EvaluatorOptions() (opts []element.Option) {
	if ip.Tolerance > 0 {
		opts = append(opts, element.WithTolerance(ip.Tolerance))
	}
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t\t= Quadrature Order\n", ip.QuadratureOrder)
	keys := make([]string, 0, len(ip.Orders))
	for k := range ip.Orders {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Orders[%s] = %d\n", key, ip.Orders[key])
	}
	if ip.Tolerance > 0 {
		fmt.Printf("%8.2e\t\t= Tolerance\n", ip.Tolerance)
	}
	fmt.Printf("[%d]\t\t\t\t= Workers\n", ip.Workers)
	fmt.Printf("[%v]\t\t\t= Mass Matrix\n", ip.MassMatrix)
}
