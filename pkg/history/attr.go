package history

import (
	"strconv"

	"github.com/svd-tools/svd-go/pkg/model"
)

// Attr names a settable scalar attribute of a device tree node. The name
// matches the SVD element it maps to.
type Attr string

const (
	AttrDescription   Attr = "description"
	AttrDisplayName   Attr = "displayName"
	AttrGroupName     Attr = "groupName"
	AttrBaseAddress   Attr = "baseAddress"
	AttrAddressOffset Attr = "addressOffset"
	AttrSize          Attr = "size"
	AttrAccess        Attr = "access"
	AttrResetValue    Attr = "resetValue"
	AttrResetMask     Attr = "resetMask"
	AttrBitOffset     Attr = "bitOffset"
	AttrBitWidth      Attr = "bitWidth"
	AttrValue         Attr = "value"
)

// attrValue holds one attribute value in its model representation. For
// optional attributes a nil pointer means unset.
type attrValue struct {
	str string
	num *uint64
	acc *model.Access
}

// parseAttr converts user input to an attrValue for attr. Numeric input
// accepts Go literal forms (decimal, 0x, 0b). An empty string clears an
// optional attribute and is rejected for required ones.
func parseAttr(op string, attr Attr, input string) (attrValue, *CommandError) {
	switch attr {
	case AttrDescription, AttrDisplayName, AttrGroupName:
		return attrValue{str: input}, nil

	case AttrAccess:
		if input == "" {
			return attrValue{}, nil
		}
		a, err := model.ParseAccess(input)
		if err != nil {
			return attrValue{}, rejectf(op, "invalid access %q", input)
		}
		return attrValue{acc: &a}, nil

	case AttrAddressOffset, AttrBitOffset, AttrBitWidth, AttrValue:
		// Required numerics.
		if input == "" {
			return attrValue{}, rejectf(op, "%s requires a value", attr)
		}
		fallthrough

	case AttrBaseAddress, AttrSize, AttrResetValue, AttrResetMask:
		if input == "" {
			return attrValue{}, nil
		}
		v, err := strconv.ParseUint(input, 0, 64)
		if err != nil {
			return attrValue{}, rejectf(op, "invalid number %q for %s", input, attr)
		}
		return attrValue{num: &v}, nil
	}
	return attrValue{}, rejectf(op, "unknown attribute %q", attr)
}

// getAttr reads the current value of attr on n. The error reports an
// attribute the node kind does not carry.
func getAttr(op string, n node, attr Attr) (attrValue, *CommandError) {
	switch {
	case n.irq != nil:
		switch attr {
		case AttrDescription:
			return attrValue{str: n.irq.Description}, nil
		case AttrValue:
			v := n.irq.Value
			return attrValue{num: &v}, nil
		}

	case n.field != nil:
		switch attr {
		case AttrDescription:
			return attrValue{str: n.field.Description}, nil
		case AttrDisplayName:
			return attrValue{str: n.field.DisplayName}, nil
		case AttrBitOffset:
			v := n.field.BitOffset
			return attrValue{num: &v}, nil
		case AttrBitWidth:
			v := n.field.BitWidth
			return attrValue{num: &v}, nil
		case AttrAccess:
			return attrValue{acc: n.field.Access}, nil
		}

	case n.reg != nil:
		switch attr {
		case AttrDescription:
			return attrValue{str: n.reg.Description}, nil
		case AttrDisplayName:
			return attrValue{str: n.reg.DisplayName}, nil
		case AttrAddressOffset:
			v := n.reg.AddressOffset
			return attrValue{num: &v}, nil
		case AttrSize:
			return attrValue{num: n.reg.Size}, nil
		case AttrAccess:
			return attrValue{acc: n.reg.Access}, nil
		case AttrResetValue:
			return attrValue{num: n.reg.ResetValue}, nil
		case AttrResetMask:
			return attrValue{num: n.reg.ResetMask}, nil
		}

	case n.per != nil:
		switch attr {
		case AttrDescription:
			return attrValue{str: n.per.Description}, nil
		case AttrDisplayName:
			return attrValue{str: n.per.DisplayName}, nil
		case AttrGroupName:
			return attrValue{str: n.per.GroupName}, nil
		case AttrBaseAddress:
			return attrValue{num: n.per.BaseAddress}, nil
		case AttrSize:
			return attrValue{num: n.per.Size}, nil
		case AttrAccess:
			return attrValue{acc: n.per.Access}, nil
		case AttrResetValue:
			return attrValue{num: n.per.ResetValue}, nil
		case AttrResetMask:
			return attrValue{num: n.per.ResetMask}, nil
		}

	default:
		switch attr {
		case AttrDescription:
			return attrValue{str: n.dev.Description}, nil
		case AttrSize:
			return attrValue{num: n.dev.Size}, nil
		case AttrAccess:
			return attrValue{acc: n.dev.Access}, nil
		case AttrResetValue:
			return attrValue{num: n.dev.ResetValue}, nil
		case AttrResetMask:
			return attrValue{num: n.dev.ResetMask}, nil
		}
	}
	return attrValue{}, rejectf(op, "attribute %q not settable here", attr)
}

// setAttr writes v to attr on n. Only called after getAttr accepted the
// same node and attribute.
func setAttr(n node, attr Attr, v attrValue) {
	switch {
	case n.irq != nil:
		switch attr {
		case AttrDescription:
			n.irq.Description = v.str
		case AttrValue:
			n.irq.Value = *v.num
		}

	case n.field != nil:
		switch attr {
		case AttrDescription:
			n.field.Description = v.str
		case AttrDisplayName:
			n.field.DisplayName = v.str
		case AttrBitOffset:
			n.field.BitOffset = *v.num
		case AttrBitWidth:
			n.field.BitWidth = *v.num
		case AttrAccess:
			n.field.Access = v.acc
		}

	case n.reg != nil:
		switch attr {
		case AttrDescription:
			n.reg.Description = v.str
		case AttrDisplayName:
			n.reg.DisplayName = v.str
		case AttrAddressOffset:
			n.reg.AddressOffset = *v.num
		case AttrSize:
			n.reg.Size = v.num
		case AttrAccess:
			n.reg.Access = v.acc
		case AttrResetValue:
			n.reg.ResetValue = v.num
		case AttrResetMask:
			n.reg.ResetMask = v.num
		}

	case n.per != nil:
		switch attr {
		case AttrDescription:
			n.per.Description = v.str
		case AttrDisplayName:
			n.per.DisplayName = v.str
		case AttrGroupName:
			n.per.GroupName = v.str
		case AttrBaseAddress:
			n.per.BaseAddress = v.num
		case AttrSize:
			n.per.Size = v.num
		case AttrAccess:
			n.per.Access = v.acc
		case AttrResetValue:
			n.per.ResetValue = v.num
		case AttrResetMask:
			n.per.ResetMask = v.num
		}

	default:
		switch attr {
		case AttrDescription:
			n.dev.Description = v.str
		case AttrSize:
			n.dev.Size = v.num
		case AttrAccess:
			n.dev.Access = v.acc
		case AttrResetValue:
			n.dev.ResetValue = v.num
		case AttrResetMask:
			n.dev.ResetMask = v.num
		}
	}
}
