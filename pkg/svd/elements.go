package svd

import "encoding/xml"

// Raw element schema for the documented CMSIS-SVD subset. Numeric values stay
// strings here so that an absent element is distinguishable from zero; the
// conversion pass in parse.go normalizes them and collects schema errors.

type deviceElement struct {
	XMLName       xml.Name `xml:"device"`
	SchemaVersion string   `xml:"schemaVersion,attr"`

	Name        string `xml:"name"`
	Version     string `xml:"version"`
	Description string `xml:"description"`
	Vendor      string `xml:"vendor"`
	Copyright   string `xml:"copyright"`

	CPU *cpuElement `xml:"cpu"`

	AddressUnitBits string `xml:"addressUnitBits"`
	Width           string `xml:"width"`
	Size            string `xml:"size"`
	Access          string `xml:"access"`
	ResetValue      string `xml:"resetValue"`
	ResetMask       string `xml:"resetMask"`

	Peripherals peripheralsElement `xml:"peripherals"`
}

type cpuElement struct {
	Name                string `xml:"name"`
	Revision            string `xml:"revision"`
	Endian              string `xml:"endian"`
	MPUPresent          string `xml:"mpuPresent"`
	FPUPresent          string `xml:"fpuPresent"`
	NVICPrioBits        string `xml:"nvicPrioBits"`
	VendorSystickConfig string `xml:"vendorSystickConfig"`
}

type peripheralsElement struct {
	Elements []peripheralElement `xml:"peripheral"`
}

type peripheralElement struct {
	DerivedFrom string `xml:"derivedFrom,attr"`

	Name        string `xml:"name"`
	DisplayName string `xml:"displayName"`
	Description string `xml:"description"`
	GroupName   string `xml:"groupName"`
	BaseAddress string `xml:"baseAddress"`

	Size       string `xml:"size"`
	Access     string `xml:"access"`
	ResetValue string `xml:"resetValue"`
	ResetMask  string `xml:"resetMask"`

	AddressBlock *addressBlockElement `xml:"addressBlock"`
	Interrupts   []interruptElement   `xml:"interrupt"`
	Registers    registersElement     `xml:"registers"`
}

type addressBlockElement struct {
	Offset string `xml:"offset"`
	Size   string `xml:"size"`
	Usage  string `xml:"usage"`
}

type interruptElement struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Value       string `xml:"value"`
}

type registersElement struct {
	Elements []registerElement `xml:"register"`
}

type registerElement struct {
	Name          string `xml:"name"`
	DisplayName   string `xml:"displayName"`
	Description   string `xml:"description"`
	AddressOffset string `xml:"addressOffset"`

	Size       string `xml:"size"`
	Access     string `xml:"access"`
	ResetValue string `xml:"resetValue"`
	ResetMask  string `xml:"resetMask"`

	Fields fieldsElement `xml:"fields"`
}

type fieldsElement struct {
	Elements []fieldElement `xml:"field"`
}

type fieldElement struct {
	Name        string `xml:"name"`
	DisplayName string `xml:"displayName"`
	Description string `xml:"description"`
	BitOffset   string `xml:"bitOffset"`
	BitWidth    string `xml:"bitWidth"`
	Access      string `xml:"access"`

	EnumeratedValues *enumeratedValuesElement `xml:"enumeratedValues"`
}

type enumeratedValuesElement struct {
	Name     string                   `xml:"name"`
	Elements []enumeratedValueElement `xml:"enumeratedValue"`
}

type enumeratedValueElement struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Value       string `xml:"value"`
}
