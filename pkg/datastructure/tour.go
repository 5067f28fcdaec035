package datastructure

// Tour. closed cycle over positions of a point subset, Path[0] == Path[len-1] == 0.
type Tour struct {
	Path []int
	Cost float64
}

func NewTour(path []int, cost float64) Tour {
	p := make([]int, len(path))
	copy(p, path)
	return Tour{Path: p, Cost: cost}
}

// TourCost. sum of consecutive matrix entries along path.
func TourCost(m *DistanceMatrix, path []int) float64 {
	cost := 0.0
	for i := 0; i+1 < len(path); i++ {
		cost += m.At(path[i], path[i+1])
	}
	return cost
}

// PartialPath. open path from position 0 plus its accumulated cost. a value record: Extend never
// aliases the parent's backing array.
type PartialPath struct {
	path []int
	cost float64
}

func NewPartialPath(start int) PartialPath {
	return PartialPath{path: []int{start}, cost: 0}
}

func (pp PartialPath) Extend(next int, edgeCost float64) PartialPath {
	path := make([]int, len(pp.path)+1)
	copy(path, pp.path)
	path[len(pp.path)] = next
	return PartialPath{path: path, cost: pp.cost + edgeCost}
}

func (pp PartialPath) Last() int {
	return pp.path[len(pp.path)-1]
}

func (pp PartialPath) Len() int {
	return len(pp.path)
}

func (pp PartialPath) GetCost() float64 {
	return pp.cost
}

func (pp PartialPath) Contains(v int) bool {
	for _, u := range pp.path {
		if u == v {
			return true
		}
	}
	return false
}

// Closed. copy of the path with the return to its first element appended.
func (pp PartialPath) Closed() []int {
	closed := make([]int, len(pp.path)+1)
	copy(closed, pp.path)
	closed[len(pp.path)] = pp.path[0]
	return closed
}

func (pp PartialPath) GetPath() []int {
	path := make([]int, len(pp.path))
	copy(path, pp.path)
	return path
}

// PathStack. slice backed LIFO of search states.
type PathStack struct {
	items []PartialPath
}

func NewPathStack() *PathStack {
	return &PathStack{items: make([]PartialPath, 0, 64)}
}

func (s *PathStack) Push(pp PartialPath) {
	s.items = append(s.items, pp)
}

func (s *PathStack) Pop() (PartialPath, bool) {
	if len(s.items) == 0 {
		return PartialPath{}, false
	}
	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = PartialPath{}
	s.items = s.items[:len(s.items)-1]
	return top, true
}

func (s *PathStack) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *PathStack) Len() int {
	return len(s.items)
}
