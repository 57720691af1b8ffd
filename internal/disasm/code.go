package disasm

import (
	"fmt"

	"github.com/retroenv/retrogb/internal/cpu"
	"github.com/retroenv/retrogb/internal/memory"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// processJumpDestinations names all jump destinations that start an
// instruction and formats the code of every instruction, using the label
// names for destinations that have one.
func (dis *Disasm) processJumpDestinations() {
	labels := make(map[uint16]string, len(dis.branchDests))
	for address := range dis.branchDests {
		index, ok := dis.instructions[address]
		if !ok {
			// destination outside of the range or inside of another instruction
			continue
		}

		name := fmt.Sprintf(labelNaming, address)
		if dis.callDestinations.Contains(address) {
			name = fmt.Sprintf(funcNaming, address)
		}
		labels[address] = name
		dis.lines[index].Label = name
	}

	target := func(address memory.Address) string {
		if name, ok := labels[uint16(address)]; ok {
			return name
		}
		return address.String()
	}

	for address, index := range dis.instructions {
		ins, err := cpu.Decode(dis, memory.Address(address))
		if err != nil {
			continue
		}
		dis.lines[index].Code = ins.Format(target)
	}
}
